// Package agent exposes the four conversational calendar operations as
// a facade over grant acquisition and the scheduling engine. Every
// operation returns a complete spoken sentence: structured errors stop
// here, and the voice layer always has something to say.
package agent
