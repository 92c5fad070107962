// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"fmt"
	"strconv"
)

// Recording limits applied to every answer.
const (
	MaxRecordSeconds = 30
	TrimSilence      = "trim-silence"
)

// DefaultName is used when the caller's name is unknown.
const DefaultName = "there"

// Fixed prompts.
const (
	GoodbyeText = "Thank you for your time. Goodbye!"
	ApologyText = "We're sorry, but there was an error processing your call. Please try again later."
)

// Action is what the gateway does after speaking.
type Action int

const (
	ActionRedirect Action = iota + 1
	ActionRecord
	ActionHangup
)

func (a Action) String() string {
	switch a {
	case ActionRedirect:
		return "redirect"
	case ActionRecord:
		return "record"
	case ActionHangup:
		return "hangup"
	default:
		return "unknown"
	}
}

// Instruction is a declarative call-control step: speak Say, then perform
// Action. Redirect and Record continue the interview at NextStep.
type Instruction struct {
	Say      string
	Action   Action
	NextStep int
	Name     string

	// Question is the bank question this step answers, if any.
	Question string
	// ResponseID identifies the session record a recording belongs to.
	// Empty when the call is unknown.
	ResponseID string
	// Terminal is set on the closing step of a completed interview.
	Terminal bool
}

// Greeting is spoken at step 0.
func Greeting(name string) string {
	return fmt.Sprintf("Hello %s, welcome to the HR interview. Let's begin.", name)
}

// Closing is spoken at the last step.
func Closing(name string) string {
	return fmt.Sprintf("Thanks %s for your answers. Goodbye!", name)
}

// Plan decides what the gateway does at step for a bank of N questions:
//
//	0        greeting, redirect to 1
//	1..N-1   ask bank[step-1], record, continue at step+1
//	N        closing, hang up
//	other    goodbye, hang up
//
// Plan has no side effects.
func Plan(step int, name string, bank []string) Instruction {
	if name == "" {
		name = DefaultName
	}
	n := len(bank)

	switch {
	case step == 0:
		return Instruction{Say: Greeting(name), Action: ActionRedirect, NextStep: 1, Name: name}
	case step >= 1 && step <= n:
		q := bank[step-1]
		if step == n {
			return Instruction{Say: Closing(name), Action: ActionHangup, Name: name, Question: q, Terminal: true}
		}
		return Instruction{Say: q, Action: ActionRecord, NextStep: step + 1, Name: name, Question: q}
	default:
		return Instruction{Say: GoodbyeText, Action: ActionHangup, Name: name}
	}
}

// Apology is returned whenever a fault prevents a normal instruction.
func Apology() Instruction {
	return Instruction{Say: ApologyText, Action: ActionHangup}
}

// ParseStep reads the step query parameter. Empty means 0; anything that is
// not an integer maps to -1, which Plan treats as out of range.
func ParseStep(raw string) int {
	if raw == "" {
		return 0
	}
	step, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return step
}
