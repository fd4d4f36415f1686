// File: conftree/doc.go

// Package conftree is a hierarchical, human-readable configuration store:
// an in-memory tree of named sections holding ordered tag/value pairs, with
// typed access through codecs, dirty-tracked persistence to a brace
// delimited text format, merging of layered sources, and a binary wire form
// for handing a resolved configuration to another process.
//
// Features:
//   - Slash-separated paths, absolute ("/server/net") or relative, for
//     sections and tags
//   - Typed access in three shapes: strict, with-default, and
//     default-materializing (the consulted default is written back so a
//     saved file documents every tag a program reads)
//   - Generic Codec[T] values, including bracketed lists "(a, b, c)"
//   - Selective save: only dirty subtrees are written, making the saved
//     file an overlay over the fuller base configuration
//   - Merging of files, environment variables and "-tag value"
//     command-line overrides, later sources taking precedence
//   - Import from TOML, JSON and YAML; export to TOML
//   - Struct scanning through the "conf" tag
//   - Lossless wire serialization across process boundaries
//
// Quick Start:
//
//	cfg, args, err := conftree.Quick("app.cfg", os.Args)
//	if err != nil && !errors.Is(err, conftree.ErrConfigNotFound) {
//	    log.Fatal(err)
//	}
//
//	host := cfg.StringDefault("server/host", "localhost")
//	port := cfg.EnsureInt("server/port", 8080)
//
//	if err := cfg.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// The text format nests sections with braces; indentation is cosmetic:
//
//	server {
//		host localhost
//		port 8080
//		endpoints (alpha, beta)
//	}
//
// Concurrency:
// The tree is not synchronized. All mutation (load, merge, store, save) must
// run on a single logical owner at a time; concurrent readers are safe only
// while no writer is active. Section handles are non-owning views that go
// stale when the owning store is reloaded.
package conftree
