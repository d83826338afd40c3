// Package message defines the extension message protocol. Every message
// travels as an Envelope {type, payload}; Decode turns an envelope into one
// of the concrete variants below, or Unknown for kinds it does not know.
package message

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hovertrans/backend/internal/model"
)

// Kind names a message type on the wire.
type Kind string

const (
	KindTranslateText     Kind = "TRANSLATE_TEXT"
	KindTranslationResult Kind = "TRANSLATION_RESULT"
	KindSaveTranslation   Kind = "SAVE_TRANSLATION"
	KindNotification      Kind = "NOTIFICATION"
)

// ErrMalformed is returned for envelopes whose payload does not fit their kind.
var ErrMalformed = errors.New("malformed message")

// Envelope is the wire form of every message.
type Envelope struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message is implemented by every variant.
type Message interface {
	Kind() Kind
	sealed()
}

// TranslateText asks the background to translate a selection.
type TranslateText struct {
	Text     string         `json:"text"`
	Position model.Position `json:"position"`
	URL      string         `json:"url"`
}

// TranslationResult carries a finished translation back to the tab.
type TranslationResult struct {
	model.TranslationResult
}

// SaveTranslation asks the background to persist a translation.
type SaveTranslation struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	Timestamp      string `json:"timestamp"`
	URL            string `json:"url"`
}

// Notification is a user-visible notification pushed to a tab.
type Notification struct {
	model.Notification
}

// Unknown preserves an envelope whose kind is not part of the protocol.
type Unknown struct {
	Type    Kind
	Payload json.RawMessage
}

func (TranslateText) Kind() Kind     { return KindTranslateText }
func (TranslationResult) Kind() Kind { return KindTranslationResult }
func (SaveTranslation) Kind() Kind   { return KindSaveTranslation }
func (Notification) Kind() Kind      { return KindNotification }
func (u Unknown) Kind() Kind         { return u.Type }

func (TranslateText) sealed()     {}
func (TranslationResult) sealed() {}
func (SaveTranslation) sealed()   {}
func (Notification) sealed()      {}
func (Unknown) sealed()           {}

// NewTranslateText builds a TRANSLATE_TEXT message from a selection.
func NewTranslateText(sel model.SelectionInfo) TranslateText {
	return TranslateText{Text: sel.Text, Position: sel.Position, URL: sel.URL}
}

// Selection returns the selection carried by the message.
func (m TranslateText) Selection() model.SelectionInfo {
	return model.SelectionInfo{Text: m.Text, Position: m.Position, URL: m.URL}
}

// Record converts the message into a history record for targetLanguage.
func (m SaveTranslation) Record(targetLanguage string) model.SavedTranslation {
	return model.SavedTranslation{
		OriginalText:   m.OriginalText,
		TranslatedText: m.TranslatedText,
		Timestamp:      m.Timestamp,
		URL:            m.URL,
		TargetLanguage: targetLanguage,
	}
}

// SaveFromResult builds the SAVE_TRANSLATION a UI sends for a displayed result.
func SaveFromResult(r model.TranslationResult) SaveTranslation {
	return SaveTranslation{
		OriginalText:   r.OriginalText,
		TranslatedText: r.TranslatedText,
		Timestamp:      r.Timestamp,
		URL:            r.URL,
	}
}

// Encode wraps msg in an envelope.
func Encode(msg Message) (Envelope, error) {
	if u, ok := msg.(Unknown); ok {
		return Envelope{Type: u.Type, Payload: u.Payload}, nil
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s: %w", msg.Kind(), err)
	}
	return Envelope{Type: msg.Kind(), Payload: payload}, nil
}

// Marshal encodes msg as an envelope JSON document.
func Marshal(msg Message) ([]byte, error) {
	env, err := Encode(msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// Unmarshal decodes an envelope JSON document.
func Unmarshal(data []byte) (Message, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Decode(env)
}

// Decode converts an envelope into its variant. Unrecognized kinds decode to
// Unknown without error.
func Decode(env Envelope) (Message, error) {
	switch env.Type {
	case KindTranslateText:
		var m TranslateText
		if err := decodePayload(env, &m); err != nil {
			return nil, err
		}
		m.Text = strings.TrimSpace(m.Text)
		if m.Text == "" {
			return nil, fmt.Errorf("%w: %s: text is empty", ErrMalformed, env.Type)
		}
		return m, nil
	case KindTranslationResult:
		var m TranslationResult
		if err := decodePayload(env, &m); err != nil {
			return nil, err
		}
		return m, nil
	case KindSaveTranslation:
		var m SaveTranslation
		if err := decodePayload(env, &m); err != nil {
			return nil, err
		}
		if m.OriginalText == "" || m.Timestamp == "" {
			return nil, fmt.Errorf("%w: %s: originalText and timestamp are required", ErrMalformed, env.Type)
		}
		return m, nil
	case KindNotification:
		var m Notification
		if err := decodePayload(env, &m); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return Unknown{Type: env.Type, Payload: env.Payload}, nil
	}
}

func decodePayload(env Envelope, v any) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("%w: %s: missing payload", ErrMalformed, env.Type)
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
	}
	return nil
}
