// SPDX-License-Identifier: EPL-2.0

// Package sqpack reads single files out of a game installation's SqPack
// archives, which is where template containers usually live.
//
// A template reference has the form "A::B": A is either the game directory
// of an installation or one of :global, :china and :korea, and B is the
// file's path inside the archives, for example
// "music/ex2/BGM_EX2_System_Title.scd".
//
// Only what template lookup needs is supported: index1 hash lookup and
// binary (type 2) dat entries.
package sqpack
