// EKS 컨트롤 플레인과 통신하는 단기 클라이언트 정의
//
// 호출 1회 수명: 조치 때마다 새로 만들고 끝나면 버림
//   - DescribeCluster로 (endpoint, CA 번들) 해석
//   - STS presigned GetCallerIdentity URL로 단기 bearer 토큰 발급
//     (x-k8s-aws-id 헤더에 클러스터 이름, base64url 패딩 없음, k8s-aws-v1. 접두사)
//   - CA 번들로 TLS 검증, 고정 10초 타임아웃으로 동기 요청
//
// 패치 전략 구분 (반드시 유지):
//   - env/restart: strategic-merge-patch (컨테이너 이름 기준 병합, 다른 env 보존)
//   - replicas: merge-patch (spec.replicas 전체 교체)

package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

const (
	tokenPrefix    = "k8s-aws-v1."
	requestTimeout = 10 * time.Second

	strategicMergePatchType = "application/strategic-merge-patch+json"
	mergePatchType          = "application/merge-patch+json"

	restartedAtAnnotation = "kubectl.kubernetes.io/restartedAt"

	// 에러 진단용 응답 본문 절단 길이
	maxErrorBodyChars = 500
)

// ControlPlaneError - 컨트롤 플레인 API의 non-2xx 응답
type ControlPlaneError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *ControlPlaneError) Error() string {
	return fmt.Sprintf("control plane %s %s failed: %d %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// ControlPlaneClient 구조체 정의
type ControlPlaneClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewControlPlaneClient - 클러스터 엔드포인트/CA 해석 + 토큰 발급까지 마친 클라이언트 생성
func NewControlPlaneClient(ctx context.Context, clusterName, region string) (*ControlPlaneClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	// 1. 클러스터 엔드포인트와 CA 번들 해석
	desc, err := eks.NewFromConfig(awsCfg).DescribeCluster(ctx, &eks.DescribeClusterInput{
		Name: aws.String(clusterName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe cluster %s: %w", clusterName, err)
	}

	endpoint := aws.ToString(desc.Cluster.Endpoint)
	caData, err := base64.StdEncoding.DecodeString(aws.ToString(desc.Cluster.CertificateAuthority.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cluster CA: %w", err)
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caData) {
		return nil, fmt.Errorf("failed to parse cluster CA bundle")
	}

	// 2. 단기 bearer 토큰 발급
	token, err := mintBearerToken(ctx, awsCfg, clusterName)
	if err != nil {
		return nil, err
	}

	return &ControlPlaneClient{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{RootCAs: caPool},
			},
		},
	}, nil
}

// mintBearerToken - presigned STS GetCallerIdentity URL로 k8s-aws-v1 토큰 생성
func mintBearerToken(ctx context.Context, awsCfg aws.Config, clusterName string) (string, error) {
	presign := sts.NewPresignClient(sts.NewFromConfig(awsCfg))

	presigned, err := presign.PresignGetCallerIdentity(ctx, &sts.GetCallerIdentityInput{},
		func(po *sts.PresignOptions) {
			po.ClientOptions = append(po.ClientOptions,
				sts.WithAPIOptions(
					smithyhttp.AddHeaderValue("x-k8s-aws-id", clusterName),
					smithyhttp.AddHeaderValue("X-Amz-Expires", "60"),
				),
			)
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to presign caller identity: %w", err)
	}

	return tokenPrefix + base64.RawURLEncoding.EncodeToString([]byte(presigned.URL)), nil
}

// PatchDeploymentEnv - 디플로이먼트 컨테이너 환경변수 설정 (strategic merge)
// 컨테이너 이름 기준으로 병합되므로 다른 컨테이너/환경변수는 건드리지 않음
func (c *ControlPlaneClient) PatchDeploymentEnv(ctx context.Context, namespace, deployment, envName, envValue string) error {
	patch := map[string]any{
		"spec": map[string]any{
			"template": map[string]any{
				"spec": map[string]any{
					"containers": []map[string]any{
						{
							"name": deployment,
							"env": []map[string]any{
								{"name": envName, "value": envValue},
							},
						},
					},
				},
			},
		},
	}
	_, err := c.patch(ctx, c.deploymentURL(namespace, deployment), strategicMergePatchType, patch)
	return err
}

// RestartDeployment - 롤링 재시작 트리거 (restartedAt 어노테이션 갱신, strategic merge)
func (c *ControlPlaneClient) RestartDeployment(ctx context.Context, namespace, deployment string) error {
	patch := map[string]any{
		"spec": map[string]any{
			"template": map[string]any{
				"metadata": map[string]any{
					"annotations": map[string]any{
						restartedAtAnnotation: time.Now().UTC().Format(time.RFC3339),
					},
				},
			},
		},
	}
	_, err := c.patch(ctx, c.deploymentURL(namespace, deployment), strategicMergePatchType, patch)
	return err
}

// ScaleDeployment - 레플리카 수 변경 (merge patch)
// spec.replicas는 중첩 구조가 없어 전체 교체가 안전함
func (c *ControlPlaneClient) ScaleDeployment(ctx context.Context, namespace, deployment string, replicas int) error {
	patch := map[string]any{
		"spec": map[string]any{
			"replicas": replicas,
		},
	}
	_, err := c.patch(ctx, c.deploymentURL(namespace, deployment), mergePatchType, patch)
	return err
}

func (c *ControlPlaneClient) deploymentURL(namespace, deployment string) string {
	return fmt.Sprintf("%s/apis/apps/v1/namespaces/%s/deployments/%s", c.endpoint, namespace, deployment)
}

// patch - 컨트롤 플레인에 PATCH 요청 전송
// non-2xx는 상태 코드와 절단된 본문을 담은 ControlPlaneError로 실패
// 2xx인데 본문이 비어있으면 빈 결과 객체 반환 (파싱 에러 아님)
func (c *ControlPlaneClient) patch(ctx context.Context, url, contentType string, patch any) (map[string]any, error) {
	payload, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call control plane: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		truncated := string(body)
		if len(truncated) > maxErrorBodyChars {
			truncated = truncated[:maxErrorBodyChars]
		}
		return nil, &ControlPlaneError{
			Method:     http.MethodPatch,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       truncated,
		}
	}

	if len(body) == 0 {
		return map[string]any{}, nil
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return result, nil
}
