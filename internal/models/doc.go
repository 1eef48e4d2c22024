// Package models defines the domain model for FairSplit.
//
// # Bill
//
// A Bill holds participants (identified by unique display names), the items
// they bought and the currency every price is expressed in. Bill methods
// enforce the item and participant invariants; splits and settlements are
// computed elsewhere as pure functions of a Bill.
//
// # Consumer sets
//
// Each item remembers who was on the bill when it was added. An item is
// either shared by all of those people or by an explicitly chosen subset
// (see ConsumerSet). Adding people later never changes an existing item's
// split; removing people drops their portion instead of redistributing it.
//
// # Records
//
// BillRecord is the plain persisted shape of a bill, with decimal prices.
// Reading a record repairs floating-point artifacts in stored prices.
package models
