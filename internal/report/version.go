package report

import (
	"context"
	"fmt"

	"github.com/kiln-build/reportexec/internal/model"
	"github.com/kiln-build/reportexec/internal/types"
)

// resolveVersion determines the effective version of a report plugin.
// Resolution stops at the first step yielding a version:
//
//  1. the version pinned in the report plugin request,
//  2. a matching plugin in the build's plugins section,
//  3. a matching plugin in the build's plugin-management section,
//  4. the fallback version-resolution service, with a visible warning
//     since a missing version is a build-quality defect.
func (e *defaultExecutor) resolveVersion(ctx context.Context, rp *ReportPlugin, req *Request) (string, error) {
	key := rp.Key().String()
	e.logger.Debug("resolving report plugin version", "plugin", key)

	if rp.Version != "" {
		e.logger.Debug("resolved version from the reporting section",
			"plugin", key, "version", rp.Version)
		return rp.Version, nil
	}

	var build *model.Build
	if req.Project != nil {
		build = req.Project.Build
	}

	if build != nil {
		if p := model.FindPlugin(build.Plugins, rp.GroupID, rp.ArtifactID); p != nil && p.Version != "" {
			e.logger.Debug("resolved version from the build plugins section",
				"plugin", key, "version", p.Version)
			return p.Version, nil
		}

		if build.PluginManagement != nil {
			if p := model.FindPlugin(build.PluginManagement.Plugins, rp.GroupID, rp.ArtifactID); p != nil && p.Version != "" {
				e.logger.Debug("resolved version from the plugin management section",
					"plugin", key, "version", p.Version)
				return p.Version, nil
			}
		}
	}

	e.logger.Warn("report plugin has an empty version", "plugin", key)
	e.logger.Warn("it is highly recommended to fix this, because it threatens the stability of the build")
	e.logger.Warn("future versions might no longer tolerate report plugins without a version")

	version, err := e.versions.Resolve(ctx, &model.Plugin{GroupID: rp.GroupID, ArtifactID: rp.ArtifactID}, req.Session)
	if err != nil {
		return "", types.WrapError(types.VERSION_RESOLUTION_FAILED,
			fmt.Sprintf("failed to resolve version of %s", key), err)
	}

	e.logger.Debug("resolved version from repository", "plugin", key, "version", version)
	return version, nil
}

// mergeBuildPlugin copies build-side extras of a matching plugin
// declaration onto the resolved plugin identity. Only dependency
// declarations carry over, and only additively.
func mergeBuildPlugin(req *Request, p *model.Plugin, rp *ReportPlugin) {
	if req.Project == nil || req.Project.Build == nil {
		return
	}

	configured := model.FindPlugin(req.Project.Build.Plugins, rp.GroupID, rp.ArtifactID)
	if configured != nil && len(configured.Dependencies) > 0 {
		p.Dependencies = append(p.Dependencies, configured.Dependencies...)
	}
}
