// Package motion holds the value types shared by the motion feature
// pipeline: raw tri-axial samples, fixed-length windows, and the error
// kinds every stage reports.
//
// The pipeline is split into one package per stage:
//
//	window    slices a sample stream into overlapping windows
//	filter    median despiking, Butterworth low-pass, gravity separation
//	derive    jerk (time derivative) and Euclidean magnitude
//	spectral  zero-padded radix-2 DFT
//	features  canonical 561-key schema and the statistics behind it
//	normalize per-column batch rescaling to [-1, 1]
//	pipeline  wires the stages into per-window and per-batch entry points
//
// Dependency rule: stage packages may depend on this package and on
// earlier stages. No I/O (files, serial ports, databases) is allowed under
// internal/motion; those collaborators live in internal/ingest,
// internal/export and internal/db.
package motion
