// Package scheduling implements the calendar business logic behind the
// voice receptionist: canonicalizing spoken-style date and time input
// into UTC time ranges, checking availability, booking events, listing
// upcoming events, and rendering every outcome as a single sentence
// ready for speech synthesis.
//
// The package is provider-agnostic: remote calls go through the
// Gateway interface, implemented by the calendar package for Google
// Calendar and by test fakes.
package scheduling
