// Package domain defines the core persistence models for the application.
// This file declares the caller-facing disclosure view of a secret: the
// subset of fields an anonymous link-holder is allowed to observe at a given
// instant.
package domain

import "time"

// DisclosureState enumerates the two observable states of an existing secret.
// "Not found" is not a state: it is reported as an error so that unknown and
// malformed identifiers remain indistinguishable.
type DisclosureState string

const (
	// DisclosureLocked means the delivery instant has not been reached;
	// payload fields are withheld.
	DisclosureLocked DisclosureState = "locked"
	// DisclosureUnlocked means the delivery instant has passed (or is now);
	// payload fields are included.
	DisclosureUnlocked DisclosureState = "unlocked"
)

// Disclosure is the anonymous-reader view of a secret produced by the
// disclosure gate. For locked secrets only the identifying metadata needed to
// render a countdown is present; Content and MediaURL are never populated.
// For unlocked secrets MediaURL carries a fetchable (time-limited) URL
// resolved from the stored opaque key.
type Disclosure struct {
	State      DisclosureState `json:"state"`
	ID         string          `json:"id"`
	DeliveryAt time.Time       `json:"delivery_at"`
	CreatedAt  time.Time       `json:"created_at"`
	Content    *string         `json:"content,omitempty"`
	MediaURL   *string         `json:"media_url,omitempty"`
}

// Locked reports whether the disclosure withholds its payload.
func (d *Disclosure) Locked() bool { return d.State == DisclosureLocked }
