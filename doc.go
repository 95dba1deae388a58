// Package vispipe contains the core components of a streaming, demand-driven visualization pipeline.
// This root package defines the types which connect algorithms to the executive: extents and
// piece requests, data objects, port information views, translators and transports. It is
// an excellent overview of the pipeline's key concepts.
package vispipe
