// Package calendar implements the scheduling.Gateway interface on top
// of the Google Calendar API. Clients are built per call from a
// tenant's grant; token refresh happens before the client is built, so
// the transport here never refreshes on its own.
package calendar
