// Package client contains the gateway to the inventory service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering
//     Login, Register, ListItems, CreateItem, UpdateItem and DeleteItem.
//  2. A REST/JSON implementation (see HTTPClient) that decodes and validates
//     every response at the boundary and normalises item records
//     (_id or id, min_stock or minStock).
//  3. Message, which turns a failed operation into the text a screen shows.
//
// # Error Handling
//
// Failures are classified into sentinel errors that callers match with
// errors.Is: ErrValidation, ErrAuth, ErrNotFound, ErrServer, ErrNetwork.
// The concrete error is an *APIError carrying the HTTP status and any message
// the service sent. ListItems wraps its failures in *FetchError.
//
// Calls are single-shot; nothing is retried.
//
// # Tokens
//
// Inventory calls carry the bearer token stored in the context by WithToken.
package client
