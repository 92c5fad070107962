// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine drives a phone interview from one question to the next.

A call's position in the interview is its step. Step 0 greets the caller,
steps 1 through N-1 ask a question and record the answer, and step N closes
the call. Any other step ends the call politely.

# Planning

Plan is a pure function of (step, name, bank) and returns an Instruction
that the gateway package renders as TwiML:

	in := engine.Plan(2, "John", bank)
	// in.Say == bank[1], in.Action == engine.ActionRecord, in.NextStep == 3

# Progression

Advance plans a step and records that the call reached it. Each bank
question gets at most one record per call, with an id derived from the
call SID and the question text, so repeated callbacks find the same record.
Reaching step N marks every record of the call completed.

	res := eng.Advance(ctx, engine.Call{SID: sid, From: from}, step, name, bank)
	if res.StoreErr != nil {
		slog.Warn("store unavailable", "error", res.StoreErr)
	}

Storage failures never change the instruction. The caller hears the same
interview whether or not the database is reachable.

# Reconciliation

Reconcile handles a "recording finished" callback. It attaches the
recording, fetches the transcript, and plans the next step from the number
of bank-question records the call already has (DeriveStep). Records with a
non-bank label, such as the outbound seed record, are ignored when
counting. Reconcile only creates a record when the next step is the last
one: it then takes step N the way Advance does, so the closing document is
never returned for a call that is not marked completed.
*/
package engine
