// Package winresources is used to embed Windows resources into framesplit.exe.
//
// These resources are used to provide:
// * Version information
// * A Windows manifest declaring Windows version support and DPI awareness
//
// The resource object file is generated with goversioninfo by go generate
// and is located in cmd/framesplit/winresources. It is linked automatically
// when building for Windows.
package winresources
