// Package recommend wraps the generative menu advisor. The upstream service
// is treated as an opaque request/response API; every failure degrades to a
// static apology so the guest never sees a raw error.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"self-order-api/models"
)

// Greeting opens every advisor session.
const Greeting = "你好！我是您的专属点餐顾问，今天想吃点什么口味的菜品呢？"

// FallbackReply is returned whenever the upstream service misbehaves.
const FallbackReply = "抱歉，我稍微有点走神，请再说一次。"

const defaultModel = "gemini-2.5-flash"

type Advisor struct {
	endpoint string
	key      string
	model    string
	client   *http.Client
	log      *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// A session keeps the running conversation. The menu is baked into the
// system instruction once, when the session is first used.
type session struct {
	system  string
	history []message
}

type message struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

func NewAdvisor(endpoint, key string, log *slog.Logger) *Advisor {
	return &Advisor{
		endpoint: endpoint,
		key:      key,
		model:    defaultModel,
		client:   http.DefaultClient,
		log:      log,
		sessions: make(map[string]*session),
	}
}

// Chat sends one guest message in the named session and returns the
// advisor's reply. It never fails: upstream errors are logged and replaced
// by the fallback reply.
func (a *Advisor) Chat(ctx context.Context, sessionID, text string, menu []models.Dish) string {
	sess := a.session(sessionID, menu)

	reply, err := a.send(ctx, sess, text)
	if err != nil {
		a.log.Warn("advisor request failed", "session", sessionID, "error", err)
		return FallbackReply
	}

	a.mu.Lock()
	sess.history = append(sess.history,
		message{Role: "user", Parts: []part{{Text: text}}},
		message{Role: "model", Parts: []part{{Text: reply}}},
	)
	a.mu.Unlock()
	return reply
}

func (a *Advisor) session(id string, menu []models.Dish) *session {
	a.mu.Lock()
	defer a.mu.Unlock()
	sess, ok := a.sessions[id]
	if !ok {
		sess = &session{system: systemPrompt(menu)}
		a.sessions[id] = sess
	}
	return sess
}

func systemPrompt(menu []models.Dish) string {
	var buf bytes.Buffer
	buf.WriteString("You are a friendly restaurant AI assistant. Here is the menu:\n")
	for _, d := range menu {
		fmt.Fprintf(&buf, "- %s (%s): ¥%.2f\n", d.Name, d.Category, d.Price)
	}
	buf.WriteString("Recommend dishes based on user preferences. Keep answers short and appetizing.")
	return buf.String()
}

type generateRequest struct {
	SystemInstruction message   `json:"system_instruction"`
	Contents          []message `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (a *Advisor) send(ctx context.Context, sess *session, text string) (string, error) {
	if a.endpoint == "" || a.key == "" {
		return "", fmt.Errorf("advisor not configured")
	}

	a.mu.Lock()
	contents := append(append([]message(nil), sess.history...),
		message{Role: "user", Parts: []part{{Text: text}}})
	system := sess.system
	a.mu.Unlock()

	body, err := json.Marshal(generateRequest{
		SystemInstruction: message{Parts: []part{{Text: system}}},
		Contents:          contents,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", a.endpoint, a.model, a.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advisor returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("advisor returned an empty response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
