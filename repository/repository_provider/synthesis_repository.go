package repository_provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
)

// synthesisRepository 外部合成服务的HTTP客户端
// 合成调用可能阻塞数秒到数分钟，超时由调用方通过 ctx 与客户端超时共同约束
type synthesisRepository struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSynthesisRepository(baseURL, apiKey string, timeout time.Duration) sound_interface.SynthesisRepository {
	return &synthesisRepository{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	EngineID   string                       `json:"engine_id"`
	Prompt     string                       `json:"prompt"`
	Parameters sound_models.SoundParameters `json:"parameters"`
}

type generateResponse struct {
	AudioURL     string `json:"audio_url"`
	ProvenanceID string `json:"provenance_id"`
	Message      string `json:"message"`
}

func (r *synthesisRepository) Generate(
	ctx context.Context,
	engineId, prompt string,
	params sound_models.SoundParameters,
) (*sound_models.SynthesisResult, error) {
	payload, err := json.Marshal(generateRequest{
		EngineID:   engineId,
		Prompt:     prompt,
		Parameters: params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generate request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generate request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read synthesis response failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("synthesis engine %s returned status %d: %s", engineId, resp.StatusCode, string(body))
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode synthesis response failed: %w", err)
	}
	if decoded.AudioURL == "" {
		return nil, fmt.Errorf("synthesis engine %s returned no audio url", engineId)
	}

	return &sound_models.SynthesisResult{
		AudioURL:     decoded.AudioURL,
		ProvenanceID: decoded.ProvenanceID,
	}, nil
}
