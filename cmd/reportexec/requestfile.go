package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kiln-build/reportexec/internal/model"
	"github.com/kiln-build/reportexec/internal/realm"
	"github.com/kiln-build/reportexec/internal/report"
)

// hostRealmName names the caller-side realm plugin realms hang off.
const hostRealmName = "kiln-host"

// requestFile is the yaml layout of a report execution request.
type requestFile struct {
	Project       *model.Project        `yaml:"project"`
	Properties    map[string]string     `yaml:"properties"`
	ReportPlugins []report.ReportPlugin `yaml:"reportPlugins"`
}

// loadRequestFile reads a request file and assembles the executor
// request, including a fresh host realm for the session.
func loadRequestFile(path string) (*report.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file %s: %w", path, err)
	}

	var rf requestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse request file %s: %w", path, err)
	}

	return &report.Request{
		Session: &model.Session{
			HostRealm:  realm.New(hostRealmName),
			Properties: rf.Properties,
		},
		Project:       rf.Project,
		ReportPlugins: rf.ReportPlugins,
	}, nil
}
