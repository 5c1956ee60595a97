package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/findthisfit/go-backend/internal/cfg"
	"github.com/findthisfit/go-backend/internal/usecase"
	"github.com/findthisfit/go-backend/pkg/e"
	openai "github.com/sashabaranov/go-openai"
)

const (
	brandColorPrompt = "Look at this clothing item. Answer in exactly two lines:\n" +
		"BRAND: <brand name if a logo or label is visible, otherwise unknown>\n" +
		"COLOR: <the single dominant color of the item>"

	describeMaxTokens = 150
)

// VisionService читает бренд и цвет с изображения и генерирует описания
// товара через OpenAI vision-модель.
type VisionService struct {
	client *openai.Client
	cfg    *cfg.OpenAICfg
}

func NewVisionService(cfg *cfg.OpenAICfg) *VisionService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &VisionService{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}
}

// ReadBrandAndColor распознаёт бренд и доминирующий цвет вещи.
// Пустые поля результата означают, что модель ничего не разглядела.
func (v *VisionService) ReadBrandAndColor(ctx context.Context, imageBytes []byte) (*usecase.VisionRead, error) {
	const op = "VisionService.ReadBrandAndColor"

	answer, err := v.ask(ctx, imageBytes, brandColorPrompt, 50)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	read := ParseBrandColorReply(answer)
	return &read, nil
}

// Describe генерирует короткое продающее описание вещи по изображению
// и известным атрибутам.
func (v *VisionService) Describe(ctx context.Context, req *usecase.DescribeReq) (string, error) {
	const op = "VisionService.Describe"

	prompt := fmt.Sprintf(
		"Write a short marketplace listing description (2-3 sentences) for this %s in %s condition. "+
			"Mention visible details like fit, fabric and styling. Do not invent brand names.",
		req.Context, strings.ToLower(req.Condition),
	)

	answer, err := v.ask(ctx, req.ImageBytes, prompt, describeMaxTokens)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", e.Wrap(op, fmt.Errorf("empty vision response"))
	}

	return answer, nil
}

// ask отправляет изображение и текстовый промпт vision-модели.
func (v *VisionService) ask(ctx context.Context, imageBytes []byte, prompt string, maxTokens int) (string, error) {
	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageBytes)

	resp, err := v.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     v.cfg.VisionModel,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURI,
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty vision response")
	}

	return resp.Choices[0].Message.Content, nil
}

// ParseBrandColorReply разбирает ответ вида "BRAND: x\nCOLOR: y".
// Заглушки модели (unknown, none, n/a) считаются отсутствием сигнала.
func ParseBrandColorReply(reply string) usecase.VisionRead {
	var read usecase.VisionRead

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)

		switch {
		case strings.HasPrefix(upper, "BRAND:"):
			read.Brand = cleanVisionValue(line[len("BRAND:"):])
		case strings.HasPrefix(upper, "COLOR:"):
			read.Color = cleanVisionValue(line[len("COLOR:"):])
		}
	}

	return read
}

// cleanVisionValue нормализует значение поля ответа vision-модели.
func cleanVisionValue(raw string) string {
	value := strings.TrimSpace(raw)
	switch strings.ToLower(value) {
	case "", "unknown", "none", "n/a", "no brand", "not visible":
		return ""
	}

	return value
}
