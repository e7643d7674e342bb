// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	EngineNotFoundId Id = iota + 1
	EngineNotRunningId
	GitNotFoundId
	BinDirNotOnPathId
	ImagePullFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to look up the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	engineNotFoundIssue = &Issue{
		id: EngineNotFoundId,
		mdMsg: `
# No container engine found!

iambic runs inside a container, so a container engine must be installed
before the launcher can work.

## Supported container engines:
- **Docker**
- **Podman**

## Things you can try:
- Install Docker:
  - https://docs.docker.com/get-docker/

- Install Podman:
  - Linux: ` + "`sudo apt install podman`" + ` or ` + "`sudo dnf install podman`" + `
  - macOS: ` + "`brew install podman`" + `

Then re-run:
~~~
$ iambic-setup install
~~~`,
		extLinks: []HttpLink{
			"https://docs.docker.com/get-docker/",
			"https://podman.io/docs/installation",
		},
	}

	engineNotRunningIssue = &Issue{
		id: EngineNotRunningId,
		mdMsg: `
# Container engine is not running!

The engine binary was found, but it could not reach its daemon/service.

## Things you can try:
- Docker on Linux:
~~~
$ sudo systemctl start docker
~~~

- Docker Desktop (macOS/Windows): start the Docker Desktop application
  and wait until it reports "running".

- Podman on macOS:
~~~
$ podman machine start
~~~

Then re-run:
~~~
$ iambic-setup install
~~~`,
	}

	gitNotFoundIssue = &Issue{
		id: GitNotFoundId,
		mdMsg: `
# git not found

The iambic templates workspace is tracked with git so that every change to
your IAM templates is versioned. Without git the workspace directory is
still created, but it is left unversioned.

## Things you can try:
- Linux: ` + "`sudo apt install git`" + ` or ` + "`sudo dnf install git`" + `
- macOS: ` + "`xcode-select --install`" + ` or ` + "`brew install git`" + `

Then re-run ` + "`iambic-setup install`" + ` to initialize the workspace.`,
	}

	binDirNotOnPathIssue = &Issue{
		id: BinDirNotOnPathId,
		mdMsg: `
# Launcher directory is not on your PATH

The launcher was installed, but its directory is not on your search path,
so typing ` + "`iambic`" + ` in a shell will not find it.

## Things you can try:
- Add this line to your shell profile (~/.bashrc, ~/.zshrc, ...):
~~~
export PATH="$HOME/bin:$PATH"
~~~

- Or invoke the launcher with its full path:
~~~
$ ~/bin/iambic --help
~~~`,
	}

	imagePullFailedIssue = &Issue{
		id: ImagePullFailedId,
		mdMsg: `
# Image prefetch failed

Pre-pulling the iambic container image failed. The launcher still works:
the engine pulls the image on first real invocation instead, which just
adds latency to that first run.

## Common causes:
- No network connectivity to the registry
- A proxy blocking access to public.ecr.aws
- The requested tag does not exist (check IAMBIC_VERSION)`,
	}

	issues = map[Id]*Issue{
		engineNotFoundIssue.Id():   engineNotFoundIssue,
		engineNotRunningIssue.Id(): engineNotRunningIssue,
		gitNotFoundIssue.Id():      gitNotFoundIssue,
		binDirNotOnPathIssue.Id():  binDirNotOnPathIssue,
		imagePullFailedIssue.Id():  imagePullFailedIssue,
	}
)

func Values() []*Issue {
	return slices.Collect(maps.Values(issues))
}

func Get(id Id) *Issue {
	return issues[id]
}
