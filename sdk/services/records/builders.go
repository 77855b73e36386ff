// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package records

// NewArchivalObject builds a published file-level child of parentURI.
func NewArchivalObject(title, parentURI, resourceURI, repoURI string) ArchivalObject {
	return ArchivalObject{
		JSONModelType: "archival_object",
		Title:         title,
		Level:         "file",
		Publish:       true,
		Parent:        Ref{Ref: parentURI},
		Resource:      Ref{Ref: resourceURI},
		Repository:    Ref{Ref: repoURI},
	}
}

// NewDigitalObject builds an unpublished digital object with a single
// unpublished file version.
func NewDigitalObject(id, title, fileURI string) DigitalObject {
	return DigitalObject{
		JSONModelType:   "digital_object",
		DigitalObjectID: id,
		Title:           title,
		Publish:         false,
		FileVersions: []FileVersion{{
			JSONModelType:      "file_version",
			FileURI:            fileURI,
			Publish:            false,
			XlinkShowAttribute: "new",
		}},
	}
}

func NewDigitalObjectInstance(doURI string) Instance {
	return Instance{
		JSONModelType: "instance",
		InstanceType:  "digital_object",
		DigitalObject: Ref{Ref: doURI},
	}
}
