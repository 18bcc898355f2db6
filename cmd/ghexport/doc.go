// Ghexport exports a GitHub repository's milestones, issues, pull
// requests and comments into a local JSON archive.
//
// It walks milestone by milestone over the GitHub REST API, resolving
// each milestone's issues and pull requests with their comments, and
// memoizes fully-resolved entities in a checkpoint cache so interrupted
// runs resume without refetching.
//
// Usage:
//
//	ghexport -u <token> -o <owner> -r <repo>              # write GitHubExport-<ts>.zip
//	ghexport -u <token> -o <owner> -r <repo> --print_json # print JSON to stdout
//	ghexport cache clean -o <owner> -r <repo>             # purge the checkpoint cache
//	ghexport cache stats -o <owner> -r <repo>             # inspect the checkpoint cache
package main
