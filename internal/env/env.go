package env

import "os"

func IsGithubAction() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

func IsLocalDev() bool {
	return os.Getenv("REFHIST_ENVIRONMENT") == "local"
}

// HistoryDir returns the REFHIST_HISTORY_DIR override, if any. It takes
// precedence over the configured history directory.
func HistoryDir() string {
	return os.Getenv("REFHIST_HISTORY_DIR")
}
