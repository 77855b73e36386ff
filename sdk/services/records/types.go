// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package records

// Ref is the ArchivesSpace reference object: {"ref": "/repositories/2/..."}.
type Ref struct {
	Ref string `json:"ref"`
}

type ArchivalObject struct {
	JSONModelType string `json:"jsonmodel_type"`
	Title         string `json:"title"`
	Level         string `json:"level"`
	Publish       bool   `json:"publish"`
	Parent        Ref    `json:"parent"`
	Resource      Ref    `json:"resource"`
	Repository    Ref    `json:"repository"`
}

type FileVersion struct {
	JSONModelType      string `json:"jsonmodel_type"`
	FileURI            string `json:"file_uri"`
	Publish            bool   `json:"publish"`
	XlinkShowAttribute string `json:"xlink_show_attribute"`
}

type DigitalObject struct {
	JSONModelType   string        `json:"jsonmodel_type"`
	DigitalObjectID string        `json:"digital_object_id"`
	Title           string        `json:"title"`
	Publish         bool          `json:"publish"`
	FileVersions    []FileVersion `json:"file_versions"`
}

// Instance is the subrecord appended to an archival object's "instances".
type Instance struct {
	JSONModelType string `json:"jsonmodel_type"`
	InstanceType  string `json:"instance_type"`
	DigitalObject Ref    `json:"digital_object"`
}

// Unit names one of the two record sets built for every row. Its value is
// also the title of the archival object created for it.
type Unit string

const (
	Caption    Unit = "Caption"
	Transcript Unit = "Transcript"
)

// Units lists the units in processing order.
var Units = []Unit{Caption, Transcript}

// Step identifies where a unit stopped.
type Step string

const (
	StepArchivalObject Step = "archival_object"
	StepDigitalObject  Step = "digital_object"
	StepLink           Step = "link"
)

// UnitRequest carries everything needed to create and link one unit.
type UnitRequest struct {
	Unit Unit

	ParentURI   string
	ResourceURI string
	RepoURI     string

	DigitalObjectID    string
	DigitalObjectTitle string
	FileURI            string
}

// UnitResult is the outcome of one dependent-creation attempt. Created is
// true only when all three steps succeeded; otherwise FailedStep and Message
// describe the rejection. URIs are filled as far as the sequence got.
type UnitResult struct {
	Unit    Unit   `json:"unit"`
	Created bool   `json:"created"`
	Step    Step   `json:"failed_step,omitempty"`
	Message string `json:"message,omitempty"`

	ArchivalObjectURI string `json:"archival_object_uri,omitempty"`
	DigitalObjectURI  string `json:"digital_object_uri,omitempty"`
}
