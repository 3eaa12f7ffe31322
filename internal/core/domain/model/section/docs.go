// Package section models the per-garment-piece workflow of an order item.
//
// Each section moves through the stages
//
//	intake -> material -> packet -> dyeing -> production -> qa -> approval -> done
//
// driven by the events of the packet, dyeing, production and QA workflows.
// Every legal move is listed in one transition table; anything else is a
// state conflict. IsBeyondPacketVerification is the single protected-status
// predicate shared by packet approval and packet rejection.
package section
