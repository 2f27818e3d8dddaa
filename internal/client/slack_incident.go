// Slack Incident 알림 메시지 관련 메서드 정의

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/checkout-sre/backend/internal/model"
)

// maxNotificationChars - 알림 본문 최대 길이 (전송 한도 보호)
const maxNotificationChars = 240000

// Incident 알림을 Slack으로 전송
//
// 제목: [{SEVERITY_UPPER}] {service} - {alertname} ({status})
// 본문: Incident 전체를 pretty-print한 JSON (240,000자 절단)
func (c *SlackClient) SendIncident(ctx context.Context, incident model.Incident) error {
	if !c.IsConfigured() {
		return fmt.Errorf("slack bot token or channel ID not configured")
	}

	msg := SlackMessage{
		Channel: c.channelID,
		Attachments: []SlackAttachment{
			{
				Color: colorBySeverity(incident.Status, incident.Severity),
				Title: formatSubject(incident),
				Text:  formatBody(incident),
				Fields: []SlackField{
					{Title: "Service", Value: incident.Service, Short: true},
					{Title: "Severity", Value: incident.Severity, Short: true},
					{Title: "Status", Value: incident.Status, Short: true},
					{Title: "Incident", Value: incident.IncidentID, Short: true},
				},
				Footer: "checkout-sre",
				Ts:     time.Now().Unix(),
			},
		},
	}

	_, err := c.send(ctx, msg)
	return err
}

// 제목 포맷팅
func formatSubject(incident model.Incident) string {
	return fmt.Sprintf("[%s] %s - %s (%s)",
		strings.ToUpper(incident.Severity),
		incident.Service,
		incident.AlertName,
		incident.Status,
	)
}

// 본문 포맷팅 (pretty-print + 절단)
func formatBody(incident model.Incident) string {
	body, err := json.MarshalIndent(incident, "", "  ")
	if err != nil {
		return ""
	}
	if len(body) > maxNotificationChars {
		body = body[:maxNotificationChars]
	}
	return string(body)
}

// Status/Severity에 따른 적절한 메시지 색상 반환
func colorBySeverity(status, severity string) string {
	if status == "resolved" {
		return "#36a64f" // green
	}
	switch severity {
	case "page", "critical":
		return "#dc3545" // red
	case "ticket", "warning":
		return "#ffc107" // yellow
	default:
		return "#17a2b8" // blue
	}
}
