package models

type DictionaryLookupRequest struct {
	Query      string `json:"query"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// DictionaryEntry is the synthesized result for a lookup. Source records which
// stage of the pipeline produced it: "synthesis", "translation" or "cache".
type DictionaryEntry struct {
	Query        string   `json:"query"`
	SourceLang   string   `json:"source_lang"`
	TargetLang   string   `json:"target_lang"`
	Translation  string   `json:"translation"`
	Definition   string   `json:"definition,omitempty"`
	Phonetic     string   `json:"phonetic,omitempty"`
	PartOfSpeech string   `json:"part_of_speech,omitempty"`
	Examples     []string `json:"examples,omitempty"`
	Suggestion   string   `json:"suggestion,omitempty"`
	Source       string   `json:"source"`
}

type ExtractTextRequest struct {
	ImageBase64 string `json:"image_base64"`
}

type ExtractedText struct {
	Text  string   `json:"text"`
	Words []string `json:"words"`
}

type PronunciationCheckRequest struct {
	AudioBase64  string `json:"audio_base64"`
	Language     string `json:"language"`
	ExpectedTerm string `json:"expected_term"`
}

type PronunciationCheck struct {
	Transcript string `json:"transcript"`
	Matched    bool   `json:"matched"`
}
