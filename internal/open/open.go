package open

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/Zuo-Peng/thinktube/internal/youtube"
)

// Video opens the watch page for the video behind rawURL.
func Video(rawURL string) error {
	id, ok := youtube.ParseVideoID(rawURL)
	if !ok {
		return fmt.Errorf("not a youtube video url: %s", rawURL)
	}
	return Browser(youtube.WatchURL(id))
}

// Browser opens url with $BROWSER, or the platform opener. It does not
// wait for the browser to exit.
func Browser(url string) error {
	cmd := browserCommand(os.Getenv("BROWSER"), runtime.GOOS, url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	go cmd.Wait()
	return nil
}

func browserCommand(browser, goos, url string) *exec.Cmd {
	if browser != "" {
		fields := strings.Fields(browser)
		return exec.Command(fields[0], append(fields[1:], url)...)
	}
	switch goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}
