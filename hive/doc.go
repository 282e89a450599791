// Package hive provides read-only access to Windows Registry hive files.
//
// # Overview
//
// This package parses offline registry hives (REGF format), such as a
// SOFTWARE hive copied from a Windows installation, without any native
// registry API. It never writes to the file: the hive is loaded into memory
// once and every accessor is a view over that buffer.
//
// # File Structure
//
// A registry hive file consists of:
//
//	[REGF Header - 4KB] [HBIN 0] [HBIN 1] ... [HBIN N]
//
// Each HBIN contains cells that store keys (NK), values (VK), subkey
// indexes (LF/LH/LI/RI) and big-data segments (DB). Cells are addressed by
// offsets relative to the first HBIN at 0x1000.
//
// # Usage
//
//	h, err := hive.Open("/mnt/windows/System32/config/SOFTWARE")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//
//	games, err := h.Find(`WOW6432Node\GOG.com\Games`)
//	names, err := games.SubkeyNames()
//
// Key and value name lookups are case-insensitive, matching the semantics of
// the Windows registry.
package hive
