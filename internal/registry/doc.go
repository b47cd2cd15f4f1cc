// Package registry keeps the ordered list of networks this client has joined,
// persisted at ~/.tellnet/networks.json.
//
// The first record is the default network. Selecting any other network by id
// swaps it into position 0 and rewrites the file before the record is
// returned, so the choice sticks for later invocations. Network ids are unique
// within the list.
package registry
