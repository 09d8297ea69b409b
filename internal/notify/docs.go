// Package notify implements the notification dispatcher and its delivery
// channels.
//
// A single logical notification fans out to up to four channels: a persisted
// database record, an email, an SMS, and a push message. Channels are
// independent failure domains: each one catches its own errors and reports
// success as a bool, so a broken provider can never prevent the remaining
// channels from being attempted. The dispatch as a whole succeeds if at
// least one requested channel succeeded.
//
// The only hard failure is an unresolvable target user, which aborts the
// dispatch before any channel is attempted.
package notify
