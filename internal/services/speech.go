package services

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"vocabox-backend/internal/models"
)

// SpeechService transcribes a short pronunciation attempt and checks whether
// the expected term was heard.
type SpeechService struct {
	client *speech.Client
}

func NewSpeechService(ctx context.Context) (*SpeechService, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Speech client: %w", err)
	}
	return &SpeechService{client: client}, nil
}

func (s *SpeechService) Close() {
	s.client.Close()
}

func (s *SpeechService) CheckPronunciation(ctx context.Context, audioData []byte, language, expectedTerm string) (*models.PronunciationCheck, error) {
	if language == "" {
		language = "en-US"
	}

	resp, err := s.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			// Clients upload WAV/FLAC; the container header carries the
			// encoding and sample rate.
			Encoding:        speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
			LanguageCode:    language,
			MaxAlternatives: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("Speech API error: %v", err)}
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, result.Alternatives[0].Transcript)
		}
	}
	transcript := strings.TrimSpace(strings.Join(parts, " "))

	return &models.PronunciationCheck{
		Transcript: transcript,
		Matched:    termHeard(transcript, expectedTerm),
	}, nil
}

func termHeard(transcript, expected string) bool {
	normalize := func(s string) string {
		return strings.ToLower(strings.Join(strings.Fields(s), " "))
	}
	expected = normalize(expected)
	if expected == "" {
		return false
	}
	return strings.Contains(normalize(transcript), expected)
}
