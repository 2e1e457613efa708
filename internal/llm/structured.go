package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// GenerateStructured runs req against p and decodes the JSON content into T.
// Decode failures are reported as *ErrInvalidResponse.
func GenerateStructured[T any](ctx context.Context, p Provider, req Request) (T, error) {
	var out T

	resp, err := p.Generate(ctx, req)
	if err != nil {
		return out, err
	}

	if resp.StopReason == "max_tokens" {
		return out, &ErrMaxTokensExceeded{Content: resp.Content}
	}

	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return out, &ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("decode %T: %w", out, err),
		}
	}
	return out, nil
}
