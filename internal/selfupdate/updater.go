package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// binaryName is the executable inside every release archive.
const binaryName = "founderpath"

// Stage names one step of Update.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageExtract  Stage = "extract"
	StageApply    Stage = "apply"
	StageDone     Stage = "done"
)

// UpdateInput selects the update. An empty TargetVersion means the latest
// release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported at the start of each stage.
type UpdateProgress struct {
	Stage   Stage
	Message string
}

// releaseFiles locates the downloads of one tagged release.
type releaseFiles struct {
	archive   string
	checksums string
	asset     string
}

func (c *Checker) releaseFiles(tag, asset string) releaseFiles {
	prefix := fmt.Sprintf("%s/%s/%s/releases/download/%s/",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag)
	return releaseFiles{
		archive:   prefix + asset,
		checksums: prefix + "checksums.txt",
		asset:     asset,
	}
}

// Update downloads the target release, verifies it against the published
// checksums and swaps it in place of the running binary.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}
	report := func(s Stage, format string, args ...any) {
		progress(UpdateProgress{Stage: s, Message: fmt.Sprintf(format, args...)})
	}

	tag := input.TargetVersion
	if tag == "" {
		report(StageCheck, "Looking for a newer FounderPath release...")
		res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	files := c.releaseFiles(tag, asset)

	report(StageDownload, "Downloading %s (%s)...", tag, asset)
	archive, err := c.fetch(ctx, files.archive)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report(StageVerify, "Verifying checksum...")
	sums, err := c.fetch(ctx, files.checksums)
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[files.asset]
	if !ok {
		return fmt.Errorf("%w: %s is not listed in checksums.txt", ErrChecksum, files.asset)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	report(StageExtract, "Unpacking %s...", binaryName)
	bin, err := extractBinary(archive, files.asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report(StageApply, "Replacing the installed binary...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := applyUpdate(bin, target, sha256Sum(bin)); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	report(StageDone, "FounderPath is now %s", tag)
	return nil
}

// assetNameFor returns the GoReleaser archive name for a platform.
func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return binaryName + "_Darwin_all.tar.gz", nil
	}

	arch, ok := map[string]string{
		"amd64": "x86_64",
		"arm64": "arm64",
		"386":   "i386",
	}[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}

	switch goos {
	case "linux":
		return fmt.Sprintf("%s_Linux_%s.tar.gz", binaryName, arch), nil
	case "windows":
		return fmt.Sprintf("%s_Windows_%s.zip", binaryName, arch), nil
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
