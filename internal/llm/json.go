package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeResponse decodes a model response into out. Extraction and
// research responses rarely arrive as clean JSON: models wrap the
// object in ```json fences or lead with prose like "Here is the
// analysis:". DecodeResponse cuts the response down to its outermost
// object and unmarshals that. An error means no usable object.
func DecodeResponse(text string, out any) error {
	obj, err := responseObject(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(obj), out); err != nil {
		return fmt.Errorf("decoding response object: %w", err)
	}
	return nil
}

// responseObject returns the outermost {...} of a response, which
// drops code fences and surrounding prose in one cut.
func responseObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return "", fmt.Errorf("no JSON object in response")
	}
	return text[start : end+1], nil
}
