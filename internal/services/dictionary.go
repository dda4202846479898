package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/redis/go-redis/v9"

	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"

	"vocabox-backend/internal/models"
)

const dictionaryCacheTTL = 24 * time.Hour

// DictionaryService synthesizes structured dictionary entries with Gemini,
// caches results in Redis, and falls back to plain machine translation when
// synthesis yields nothing usable.
type DictionaryService struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	translate *translate.Service
	redis     *redis.Client
	rateChan  chan struct{} // Token bucket
}

func NewDictionaryService(apiKey string, concurrentReqs int, redisClient *redis.Client) (*DictionaryService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-3-flash-preview")
	model.SetTemperature(0.2)
	model.SetTopP(0.95)

	translateSvc, err := translate.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to create Translate client: %w", err)
	}

	// Token bucket for rate limiting
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &DictionaryService{
		client:    client,
		model:     model,
		translate: translateSvc,
		redis:     redisClient,
		rateChan:  rateChan,
	}, nil
}

func (s *DictionaryService) Close() {
	s.client.Close()
}

func (s *DictionaryService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Minute):
		return &RateLimitError{Message: "Dictionary synthesis is busy, try again shortly"}
	}
}

func (s *DictionaryService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Lookup resolves a term into a dictionary entry: cache first, then Gemini
// synthesis, then the translation fallback.
func (s *DictionaryService) Lookup(ctx context.Context, query, sourceLang, targetLang string) (*models.DictionaryEntry, error) {
	normalized := normalizeQuery(query)
	if normalized == "" {
		return nil, &ValidationError{Fields: map[string]string{"query": "query is required"}}
	}

	key := cacheKey(normalized, sourceLang, targetLang)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			entry := &models.DictionaryEntry{}
			if err := json.Unmarshal([]byte(cached), entry); err == nil {
				entry.Source = "cache"
				return entry, nil
			}
		}
	}

	entry, err := s.synthesize(ctx, normalized, sourceLang, targetLang)
	if err != nil {
		log.Printf("dictionary synthesis failed for %q: %v", normalized, err)
		entry, err = s.translateFallback(ctx, normalized, sourceLang, targetLang)
		if err != nil {
			return nil, err
		}
	}

	if s.redis != nil {
		if data, err := json.Marshal(entry); err == nil {
			s.redis.Set(ctx, key, string(data), dictionaryCacheTTL)
		}
	}
	return entry, nil
}

// synthesisResult is the JSON shape the prompt asks Gemini for.
type synthesisResult struct {
	Found      bool   `json:"found"`
	Suggestion string `json:"suggestion"`
	Entry      struct {
		Translation  string   `json:"translation"`
		Definition   string   `json:"definition"`
		Phonetic     string   `json:"phonetic"`
		PartOfSpeech string   `json:"part_of_speech"`
		Examples     []string `json:"examples"`
	} `json:"entry"`
}

func (s *DictionaryService) synthesize(ctx context.Context, query, sourceLang, targetLang string) (*models.DictionaryEntry, error) {
	if err := s.acquireRate(ctx); err != nil {
		return nil, err
	}
	defer s.releaseRate()

	prompt := buildDictionaryPrompt(query, sourceLang, targetLang)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("Gemini API error: %v", err)}
	}

	raw := extractText(resp)
	result, err := parseSynthesis(raw)
	if err != nil {
		return nil, err
	}

	entry := &models.DictionaryEntry{
		Query:        query,
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
		Translation:  result.Entry.Translation,
		Definition:   result.Entry.Definition,
		Phonetic:     result.Entry.Phonetic,
		PartOfSpeech: result.Entry.PartOfSpeech,
		Examples:     result.Entry.Examples,
		Suggestion:   result.Suggestion,
		Source:       "synthesis",
	}

	if !result.Found {
		if result.Suggestion != "" {
			// Misspelling: return the suggestion alone, no fabricated entry.
			return entry, nil
		}
		return nil, &NotFoundError{Message: "No dictionary entry could be synthesized"}
	}
	return entry, nil
}

func (s *DictionaryService) translateFallback(ctx context.Context, query, sourceLang, targetLang string) (*models.DictionaryEntry, error) {
	call := s.translate.Translations.List([]string{query}, targetLang).Format("text").Context(ctx)
	if sourceLang != "" {
		call = call.Source(sourceLang)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("Translate API error: %v", err)}
	}
	if len(resp.Translations) == 0 {
		return nil, &NotFoundError{Message: "No translation found"}
	}

	return &models.DictionaryEntry{
		Query:       query,
		SourceLang:  sourceLang,
		TargetLang:  targetLang,
		Translation: resp.Translations[0].TranslatedText,
		Source:      "translation",
	}, nil
}

func buildDictionaryPrompt(query, sourceLang, targetLang string) string {
	var b strings.Builder
	b.WriteString("You are a bilingual dictionary. For the term below, respond with JSON only, no prose, matching exactly:\n")
	b.WriteString(`{"found": bool, "suggestion": "corrected spelling if the term looks misspelled, else empty", "entry": {"translation": "...", "definition": "...", "phonetic": "IPA", "part_of_speech": "...", "examples": ["...", "..."]}}`)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Term language: %s\nTranslation language: %s\nTerm: %s\n", sourceLang, targetLang, query)
	b.WriteString("Set found=false if the term is not a real word or phrase in the term language. Give at most 3 short examples in the term language.")
	return b.String()
}

func parseSynthesis(raw string) (*synthesisResult, error) {
	cleaned := cleanModelJSON(raw)
	if cleaned == "" {
		return nil, &UpstreamError{Message: "Gemini returned an empty response"}
	}

	result := &synthesisResult{}
	if err := json.Unmarshal([]byte(cleaned), result); err != nil {
		return nil, &UpstreamError{Message: "Gemini returned unparseable JSON"}
	}
	return result, nil
}

// cleanModelJSON strips the markdown fences Gemini wraps JSON in.
func cleanModelJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func cacheKey(normalized, sourceLang, targetLang string) string {
	return fmt.Sprintf("dict:%s:%s:%s", sourceLang, targetLang, normalized)
}

func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}
