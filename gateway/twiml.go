// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gateway

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/twilio/twilio-go/twiml"

	"github.com/danielhkuo/voice-interview/engine"
)

// ApologyTwiML is the last-resort apology, used only when Renderer.Apology
// itself cannot be rendered. Its voice is fixed to Polly.Amy.
const ApologyTwiML = `<?xml version="1.0" encoding="UTF-8"?>` +
	`<Response><Say voice="Polly.Amy">` + apologyXML + `</Say><Hangup/></Response>`

const apologyXML = "We&apos;re sorry, but there was an error processing your call. Please try again later."

// URLs builds the callback URLs handed to the gateway.
type URLs struct {
	Base string
}

func (u URLs) Answer() string {
	return u.Base + "/answer/"
}

// Voice is the progression endpoint for step.
func (u URLs) Voice(step int, name string) string {
	return fmt.Sprintf("%s/voice/?q=%d&name=%s", u.Base, step, url.QueryEscape(name))
}

func (u URLs) RecordingStatus(responseID, name string) string {
	return fmt.Sprintf("%s/recording-status/?response_id=%s&name=%s",
		u.Base, url.QueryEscape(responseID), url.QueryEscape(name))
}

func (u URLs) Transcription() string {
	return u.Base + "/transcription/"
}

// Renderer turns engine instructions into TwiML documents.
type Renderer struct {
	URLs  URLs
	Voice string
}

// Render returns the TwiML for in. Record steps also ask the gateway to
// transcribe the answer and to report the finished recording against
// in.ResponseID.
func (r Renderer) Render(in engine.Instruction) (string, error) {
	var verbs []twiml.Element

	if in.Say != "" {
		verbs = append(verbs, &twiml.VoiceSay{Message: in.Say, Voice: r.Voice})
	}

	switch in.Action {
	case engine.ActionRedirect:
		verbs = append(verbs, &twiml.VoiceRedirect{Url: r.URLs.Voice(in.NextStep, in.Name)})
	case engine.ActionRecord:
		record := &twiml.VoiceRecord{
			Action:             r.URLs.Voice(in.NextStep, in.Name),
			MaxLength:          strconv.Itoa(engine.MaxRecordSeconds),
			PlayBeep:           "false",
			Trim:               engine.TrimSilence,
			Transcribe:         "true",
			TranscribeCallback: r.URLs.Transcription(),
		}
		if in.ResponseID != "" {
			record.RecordingStatusCallback = r.URLs.RecordingStatus(in.ResponseID, in.Name)
		}
		verbs = append(verbs, record)
	case engine.ActionHangup:
		verbs = append(verbs, &twiml.VoiceHangup{})
	default:
		return "", fmt.Errorf("unknown action %v", in.Action)
	}

	// twiml writes attributes in map order; sort them so one instruction
	// always renders to the same bytes
	doc, response := twiml.CreateDocument()
	twiml.AddAllVerbs(response, verbs)
	for _, el := range response.ChildElements() {
		el.SortAttrs()
	}

	out, err := twiml.ToXML(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render twiml: %w", err)
	}
	if !strings.Contains(out, "<Response") {
		return "", fmt.Errorf("rendered twiml has no Response element")
	}
	return out, nil
}

// Apology renders the apology in the configured voice.
func (r Renderer) Apology() string {
	doc, err := r.Render(engine.Apology())
	if err != nil {
		return ApologyTwiML
	}
	return doc
}
