// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package protocol defines the streaming event interface of the
// inspector wire codec and the binary half of its implementation.
//
// Everything flows through [Handler]: a producer (the binary parser
// here, or the JSON tokeniser in lib/jsontext) calls one handler
// method per value event, and a consumer (the binary encoder here, or
// the JSON writer in lib/jsontext) turns those events back into
// bytes. Because both producers and both consumers share the one
// interface, either side can drive either sink.
//
// Failures travel the same way: the producer calls HandleError once
// with a [Status] naming the [Error] kind and byte position, emits
// nothing further, and the consumer records the status into the
// caller's status cell. The status is sticky — every handler method
// is a no-op once it is set.
package protocol
