// Copyright (C) 2025 The FAN Project
//
// This file is part of fan-go.
//
// fan-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fan-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with fan-go.  If not, see <https://www.gnu.org/licenses/>.

// Package fan provides version information for fan-go.
package fan

const (
	// Version is the current version of fan-go
	Version = "0.2.0"

	// DIDContentTypeVersion is the version of the DID document media types
	// this build serves
	DIDContentTypeVersion = "1.0"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	FanVersion            string
	DIDContentTypeVersion string
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		FanVersion:            Version,
		DIDContentTypeVersion: DIDContentTypeVersion,
	}
}
