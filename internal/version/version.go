// ABOUTME: Version constants for the MeowTalk SDK
// ABOUTME: Reported in client hello messages and the analyze CLI
package version

const (
	// Version is the SDK version string
	Version = "0.3.0"

	// Product is the product name reported to servers
	Product = "MeowTalk SDK"

	// Manufacturer identifies the SDK vendor
	Manufacturer = "MeowTalk Labs"
)
