package model

import "fmt"

type Tone string

const (
	ToneProfessional   Tone = "professional"
	ToneConversational Tone = "conversational"
	ToneEducational    Tone = "educational"
	ToneCreative       Tone = "creative"
)

type Audience string

const (
	AudienceGeneral   Audience = "general"
	AudienceTechnical Audience = "technical"
	AudienceBusiness  Audience = "business"
	AudienceAcademic  Audience = "academic"
)

const (
	WordCountMin     = 300
	WordCountMax     = 2000
	WordCountDefault = 800
)

type GenerationOptions struct {
	Tone      Tone     `json:"tone"`
	WordCount int      `json:"wordCount"`
	Audience  Audience `json:"audience"`
}

// WithDefaults fills the zero fields with the values the form starts with.
func (o GenerationOptions) WithDefaults() GenerationOptions {
	if o.Tone == "" {
		o.Tone = ToneProfessional
	}
	if o.WordCount == 0 {
		o.WordCount = WordCountDefault
	}
	if o.Audience == "" {
		o.Audience = AudienceGeneral
	}

	return o
}

func (o GenerationOptions) Validate() error {
	switch o.Tone {
	case ToneProfessional, ToneConversational, ToneEducational, ToneCreative:
	default:
		return NewError(KindInvalidInput, CodeInvalidOptions, fmt.Sprintf("Unknown tone %q", o.Tone), nil)
	}
	switch o.Audience {
	case AudienceGeneral, AudienceTechnical, AudienceBusiness, AudienceAcademic:
	default:
		return NewError(KindInvalidInput, CodeInvalidOptions, fmt.Sprintf("Unknown audience %q", o.Audience), nil)
	}
	if o.WordCount < WordCountMin || o.WordCount > WordCountMax {
		return NewError(KindInvalidInput, CodeInvalidOptions, fmt.Sprintf("Word count must be between %d and %d", WordCountMin, WordCountMax), nil)
	}

	return nil
}
