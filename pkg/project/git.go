package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	giturls "github.com/whilp/git-urls"

	"github.com/uberfix/devtools/pkg/models"
)

// ErrNotRepository はルートがGitの作業ツリー内に無い場合のエラーです
var ErrNotRepository = errors.New("not a git repository")

// InspectRepository は root を含むGitリポジトリのメタデータを取得します
// 親ディレクトリの .git も探索します
func InspectRepository(root string) (*models.RepositoryInfo, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	info := &models.RepositoryInfo{}

	head, err := repo.Head()
	if err == nil {
		info.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			info.Branch = head.Name().Short()
		}
	}

	remote, err := repo.Remote("origin")
	if err == nil && len(remote.Config().URLs) > 0 {
		host, path, err := ParseRemoteURL(remote.Config().URLs[0])
		if err == nil {
			info.RemoteHost = host
			info.RemotePath = path
		}
	}

	return info, nil
}

// ParseRemoteURL はGitのリモートURLをホスト名とリポジトリパスに分解します
// scp形式（git@host:owner/repo.git）にも対応します
func ParseRemoteURL(remoteURL string) (string, string, error) {
	u, err := giturls.Parse(remoteURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse git URL: %w", err)
	}

	hostname := u.Hostname()
	if hostname == "" {
		hostname = u.Host
	}

	path := strings.TrimPrefix(u.Path, "/")
	path = strings.TrimSuffix(path, ".git")

	return hostname, path, nil
}
