// Package confirmation models the customer confirmation round-trips that gate
// some processing steps: confirming the pickup or return address, and
// accepting the embassy fee once the embassy has quoted it.
//
// Each Request moves None -> Sent -> Confirmed | Declined. The admin may send
// again at any time, which starts a new round with a fresh token and payload.
// The customer answers once per round, before the token expires.
package confirmation
