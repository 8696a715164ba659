package services

import (
	"context"
	"log/slog"

	apperrors "github.com/petersen65/CppPlayground/internal/application/errors"
	"github.com/petersen65/CppPlayground/internal/application/ports"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
	domainservices "github.com/petersen65/CppPlayground/internal/domain/services"
	"github.com/petersen65/CppPlayground/internal/domain/values"
)

// PackageResolver turns registered requirements into resolved packages:
// version selection, option binding, component evaluation and
// dependency ordering.
type PackageResolver struct {
	index      ports.PackageIndex
	versions   ports.VersionResolver
	digester   ports.PackageDigester
	binder     *domainservices.OptionBinder
	components *domainservices.ComponentResolver
	graph      *domainservices.DependencyResolver
	logger     *slog.Logger
}

// NewPackageResolver creates a package resolver.
func NewPackageResolver(
	index ports.PackageIndex,
	versions ports.VersionResolver,
	digester ports.PackageDigester,
	logger *slog.Logger,
) *PackageResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &PackageResolver{
		index:      index,
		versions:   versions,
		digester:   digester,
		binder:     domainservices.NewOptionBinder(),
		components: domainservices.NewComponentResolver(),
		graph:      domainservices.NewDependencyResolver(),
		logger:     logger,
	}
}

// Resolve resolves reqs and their transitive requirements for platform.
// A non-nil lock pins versions and digests of the packages it lists.
// The result is ordered dependencies-first.
func (r *PackageResolver) Resolve(
	ctx context.Context,
	reqs *entities.Requirements,
	options entities.OptionSet,
	platform *entities.Platform,
	lock *entities.Lockfile,
) ([]*entities.ResolvedPackage, error) {
	all := entities.NewRequirements()
	queue := reqs.List()
	for _, req := range queue {
		if err := all.Add(req.Ref); err != nil {
			return nil, apperrors.NewUnresolvableDependencyError(req.Ref.String(), err)
		}
	}

	seen := make(map[string]bool)
	var resolved []*entities.ResolvedPackage

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req := queue[0]
		queue = queue[1:]
		if seen[req.Ref.Name()] {
			continue
		}
		seen[req.Ref.Name()] = true

		pkg, err := r.resolveOne(ctx, req.Ref, options, platform, lock)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, pkg)

		for _, dep := range pkg.Info.Requires {
			ref, err := values.ParsePackageReference(dep)
			if err != nil {
				return nil, apperrors.NewUnresolvableDependencyError(dep, err)
			}
			if err := all.Add(ref); err != nil {
				return nil, apperrors.NewUnresolvableDependencyError(ref.String(), err)
			}
			queue = append(queue, entities.Requirement{Ref: ref})
		}
	}

	ordered, err := r.graph.Order(resolved)
	if err != nil {
		return nil, apperrors.NewUnresolvableDependencyError("dependency graph", err)
	}
	return ordered, nil
}

func (r *PackageResolver) resolveOne(
	ctx context.Context,
	ref values.PackageReference,
	options entities.OptionSet,
	platform *entities.Platform,
	lock *entities.Lockfile,
) (*entities.ResolvedPackage, error) {
	constraint := ref.Version()

	var version, lockedDigest string
	if lock != nil {
		if locked := lock.GetPackage(ref.Name()); locked != nil && locked.Requested == constraint {
			version = locked.Resolved
			lockedDigest = locked.Digest
			r.logger.Debug("using locked version", "package", ref.Name(), "version", version)
		}
	}

	if version == "" {
		available, err := r.index.Versions(ctx, ref.Name())
		if err != nil {
			return nil, apperrors.NewUnresolvableDependencyError(ref.String(), err)
		}
		version, err = r.versions.Resolve(constraint, available)
		if err != nil {
			return nil, apperrors.NewUnresolvableDependencyError(ref.String(), err)
		}
	}

	info, source, err := r.index.Lookup(ctx, ref.Name(), version)
	if err != nil {
		return nil, apperrors.NewUnresolvableDependencyError(ref.String(), err)
	}

	digest, err := r.digester.DigestPackage(info)
	if err != nil {
		return nil, apperrors.NewUnresolvableDependencyError(ref.String(), err)
	}
	if lockedDigest != "" && lockedDigest != digest {
		return nil, apperrors.NewUnresolvableDependencyError(ref.String(), &entities.IntegrityError{
			Package:  ref.Name(),
			Expected: lockedDigest,
			Actual:   digest,
		})
	}

	exact := ref.WithVersion(version)
	opts, err := r.binder.Bind(exact, info, options)
	if err != nil {
		return nil, apperrors.NewConfigurationError("options", "binding package options", err)
	}

	components, systemLibs, err := r.components.Resolve(info, platform, opts)
	if err != nil {
		return nil, apperrors.NewConfigurationError("package", "evaluating package components", err)
	}

	r.logger.Debug("resolved package",
		"package", exact.String(),
		"requested", constraint,
		"source", source,
		"components", len(components))

	return &entities.ResolvedPackage{
		Ref:        exact,
		Requested:  constraint,
		Info:       info,
		Options:    opts,
		Components: components,
		SystemLibs: systemLibs,
		Source:     source,
		Digest:     digest,
	}, nil
}
