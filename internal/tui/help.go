package tui

const helpMarkdown = `# Reel Tasks

Queue Instagram reels for download and watch them move through the queue.

## Dashboard

| Key | Action |
|-----|--------|
| ` + "`a`" + ` | Add a reel |
| ` + "`d`" + ` | Delete the selected task |
| ` + "`C`" + ` | Clear all tasks |
| ` + "`↑/↓`" + ` | Move the selection |
| ` + "`pgup/pgdn`" + ` | Scroll the live logs |
| ` + "`?`" + ` | This help |
| ` + "`q`" + ` | Quit |

## Adding a reel

* **Reel URL** is required.
* **Schedule For** takes ` + "`YYYY-MM-DD HH:MM`" + ` in local time. Leave it empty to download as soon as possible.
* **Repeat Interval** takes whole minutes (` + "`90`" + `) or a duration (` + "`1h30m`" + `). Leave it empty for a one-off download.

Submit with ` + "`ctrl+s`" + `, or ` + "`enter`" + ` on the last field. If the server rejects the reel, the form keeps what you typed.

## Status badges

* ● **pending** waiting to run
* ✓ **completed** downloaded
* ✗ **failed** the download did not succeed

Only tasks added in this session are listed. Status changes arrive live from the server.
`
