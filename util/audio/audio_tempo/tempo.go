package audio_tempo

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/h2non/filetype"
	ffmpeggo "github.com/u2takey/ffmpeg-go"
)

// 单级 atempo 滤镜的可逆区间
const (
	atempoMin = 0.5
	atempoMax = 2.0
)

var (
	ErrEmptyAudio       = errors.New("audio payload cannot be empty")
	ErrInvalidTargetBPM = errors.New("target bpm must be positive")
	ErrUnknownFormat    = errors.New("unrecognized audio format")
)

// TempoRequest 变速请求：已编码音频 + 目标 BPM + 可选的源 BPM 估计
type TempoRequest struct {
	Audio        []byte
	TargetBPM    int
	EstimatedBPM *float64 // 缺省时按目标 BPM 分桶推断
}

// TempoResult 变速结果
type TempoResult struct {
	Audio       []byte    // 重编码后的音频
	Format      string    // 嗅探出的容器扩展名（如 mp3、wav）
	SourceTitle string    // 标签中的标题（存在时）
	SourceBPM   float64   // 实际采用的源 BPM（推断或显式）
	Ratio       float64   // target / source
	Stages      []float64 // atempo 级联各级系数
	Inferred    bool      // 源 BPM 是否来自分桶推断
}

// InferSourceBPM 按目标 BPM 分桶推断源 BPM 的静态经验表
// 表是文档化的固定启发式，不做任何实时测量
func InferSourceBPM(targetBPM int) float64 {
	t := float64(targetBPM)
	switch {
	case targetBPM < 100:
		return t * 1.10
	case targetBPM < 130:
		return t * 0.909
	case targetBPM < 160:
		return t * 0.833
	}
	return t * 0.75
}

// DecomposeRatio 把变速比例拆成 atempo 级联
// 超出 [0.5,2.0] 时反复除以 2.0（或 0.5）直至余数可表示，最后补一级校正
func DecomposeRatio(ratio float64) ([]float64, error) {
	if ratio <= 0 || math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return nil, fmt.Errorf("invalid stretch ratio: %v", ratio)
	}

	stages := make([]float64, 0, 4)
	remainder := ratio
	for remainder > atempoMax {
		stages = append(stages, atempoMax)
		remainder /= atempoMax
	}
	for remainder < atempoMin {
		stages = append(stages, atempoMin)
		remainder /= atempoMin
	}
	stages = append(stages, remainder)

	return stages, nil
}

// AdjustTempo 把音频拉伸到目标 BPM
// 比例 = 目标/源；源未知时走 InferSourceBPM 的分桶表
func AdjustTempo(req *TempoRequest) (*TempoResult, error) {
	if len(req.Audio) == 0 {
		return nil, ErrEmptyAudio
	}
	if req.TargetBPM <= 0 {
		return nil, ErrInvalidTargetBPM
	}

	kind, err := filetype.Match(req.Audio)
	if err != nil || kind == filetype.Unknown {
		return nil, ErrUnknownFormat
	}

	sourceBPM := 0.0
	inferred := false
	if req.EstimatedBPM != nil && *req.EstimatedBPM > 0 {
		sourceBPM = *req.EstimatedBPM
	} else {
		sourceBPM = InferSourceBPM(req.TargetBPM)
		inferred = true
	}

	ratio := float64(req.TargetBPM) / sourceBPM
	stages, err := DecomposeRatio(ratio)
	if err != nil {
		return nil, err
	}

	result := &TempoResult{
		Format:      kind.Extension,
		SourceTitle: probeTitle(req.Audio),
		SourceBPM:   sourceBPM,
		Ratio:       ratio,
		Stages:      stages,
		Inferred:    inferred,
	}

	// 比例为 1 时无需重编码，原样返回
	if math.Abs(ratio-1.0) < 1e-9 {
		result.Audio = req.Audio
		return result, nil
	}

	stretched, err := runAtempoChain(req.Audio, kind.Extension, stages)
	if err != nil {
		return nil, err
	}
	result.Audio = stretched

	return result, nil
}

// probeTitle 读取标签里的标题，失败时静默返回空串
func probeTitle(audio []byte) string {
	metadata, err := tag.ReadFrom(bytes.NewReader(audio))
	if err != nil {
		return ""
	}
	return metadata.Title()
}

// runAtempoChain 经临时文件走 ffmpeg atempo 级联滤镜
func runAtempoChain(audio []byte, ext string, stages []float64) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "tempo-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir failed: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	inPath := filepath.Join(tmpDir, "in."+ext)
	outPath := filepath.Join(tmpDir, "out."+ext)
	if err := os.WriteFile(inPath, audio, 0644); err != nil {
		return nil, fmt.Errorf("write temp input failed: %w", err)
	}

	filters := make([]string, 0, len(stages))
	for _, stage := range stages {
		filters = append(filters, fmt.Sprintf("atempo=%.6f", stage))
	}
	chain := strings.Join(filters, ",")

	cmd := ffmpeggo.Input(inPath).
		Output(outPath, ffmpeggo.KwArgs{
			"filter:a": chain,
			"vn":       "", // 丢弃封面等视频流
		}).
		OverWriteOutput()

	compiledCmd := cmd.Compile()
	log.Printf("执行FFmpeg变速命令: %s", strings.Join(compiledCmd.Args, " "))

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg atempo failed: %w", err)
	}

	stretched, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read temp output failed: %w", err)
	}
	if len(stretched) == 0 {
		return nil, errors.New("ffmpeg produced empty output")
	}

	return stretched, nil
}
