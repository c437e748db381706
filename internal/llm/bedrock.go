package llm

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

const defaultBedrockMaxTokens = 4096

// converser is the subset of the Bedrock runtime client used here
type converser interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Bedrock calls models hosted on Amazon Bedrock through the Converse API.
// Bedrock has no generic JSON mode; the prompts carry the format instructions.
type Bedrock struct {
	brc       converser
	maxTokens int
}

// NewBedrock creates a client from a loaded AWS configuration.
func NewBedrock(awsCfg aws.Config, maxTokens int) *Bedrock {
	return newBedrock(bedrockruntime.NewFromConfig(awsCfg), maxTokens)
}

func newBedrock(brc converser, maxTokens int) *Bedrock {
	if maxTokens <= 0 {
		maxTokens = defaultBedrockMaxTokens
	}
	return &Bedrock{brc: brc, maxTokens: maxTokens}
}

// Complete sends one Converse request and joins the returned text blocks.
func (b *Bedrock) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	system, turns := split(req.Messages)

	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(req.Model),
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(int32(maxTokens(req, b.maxTokens))),
			Temperature: aws.Float32(float32(req.Temperature)),
		},
	}
	if system != "" {
		input.System = []types.SystemContentBlock{&types.SystemContentBlockMemberText{Value: system}}
	}
	for _, m := range turns {
		input.Messages = append(input.Messages, types.Message{
			Role:    types.ConversationRole(m.Role),
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: m.Content}},
		})
	}

	out, err := b.brc.Converse(ctx, input)
	if err != nil {
		return "", classify(ctx, err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", nil
	}

	var text string
	for _, block := range msg.Value.Content {
		if t, ok := block.(*types.ContentBlockMemberText); ok {
			text += t.Value
		}
	}
	return text, nil
}
