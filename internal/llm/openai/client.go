package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joseph-ayodele/contracts-ledger/internal/contract"
	"github.com/joseph-ayodele/contracts-ledger/internal/llm"
)

// ExtractFields implements llm.Extractor using text-only chat/completions.
// Transport and decode failures return an error so the caller can fall back
// to the rule pass alone. A response that parses as JSON but fails the
// schema degrades to the all-empty record with a nil error: a bad model
// answer must never block the document.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (contract.Record, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.DocumentText),
		"language", req.Language,
		"filename", req.FilenameHint,
	)

	schema := llm.BuildContractJSONSchema()
	sys := llm.BuildSystemPrompt(c.vocab)
	user := llm.BuildUserPrompt(req)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": sys},
			{"role": "user", "content": user + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, httpErr := c.post(ctx, endpoint, body)
	if httpErr != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return contract.Record{}, nil, httpErr
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return contract.Record{}, raw, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return contract.Record{}, raw, fmt.Errorf("no choices in openai response")
	}
	content := llm.StripCodeFences(cc.Choices[0].Message.Content)
	rawContent := []byte(content)

	cleaned, dropped, sErr := llm.NormalizeAndSanitizeJSON(rawContent, c.log)
	if sErr != nil {
		// Not even JSON. The rule pass carries the document.
		c.log.Warn("llm.extract.unparseable",
			"req_id", rid, "error", sErr, "content_bytes", len(rawContent),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return contract.Record{}, rawContent, nil
	}
	if err := llm.ValidateJSONAgainstSchema(schema, cleaned); err != nil {
		c.log.Warn("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err, "dropped", dropped,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return contract.Record{}, cleaned, nil
	}

	out, err := llm.DecodeFields(cleaned)
	if err != nil {
		c.log.Warn("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return contract.Record{}, cleaned, nil
	}
	out.Equipment = llm.NormalizeAIEquipment(c.vocab, out.Equipment)

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"sales_rep", out.SalesRep,
		"customer", out.CustomerName,
		"price", out.SoldPrice,
		"equipment", out.Equipment,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, cleaned, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.log.Warn("openai response body close error", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, buf.String())
	}

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	return buf.Bytes(), nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
