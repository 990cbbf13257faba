// Package jsoncodec implements driven.Serializer for JSON documents.
//
// Values are encoded with encoding/json, then reshaped with gjson and
// pretty: top-level null members are dropped and the result is indented
// with two spaces.
//
// Decoding starts from the shape's defaults. Every top-level member present
// in the document with a non-null value replaces the default member
// wholesale, so object and map members are never merged field by field.
// Absent and null members keep their defaults.
package jsoncodec
