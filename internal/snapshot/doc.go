// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot decodes stored configuration snapshots into cnode trees.
//
// Three document formats are understood. In JSON and YAML, object members are
// children in document order, scalars are single values, arrays are value
// lists and null is a valueless leaf. Members whose key starts with '@' are
// attributes of the enclosing node:
//
//	@value, @values   the node's own value(s) when it also has children
//	@comment          the node comment
//	@default          value comes from the schema default
//	@secret           value is redacted on display
//	@deactivated      node is present but inactive
//
// In HCL, each block is a node and each block label one more level below it;
// attributes are leaves and repeated blocks merge. HCL carries no flags.
//
// A snapshot may also be wrapped in an encrypted envelope, a JSON document
// holding PBKDF2 key parameters and AES-GCM sealed data.
package snapshot
