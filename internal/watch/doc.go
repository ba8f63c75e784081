// Package watch monitors a directory for simulation request files and hands
// each new file to a submit callback once its writes have settled. Processed
// files are moved to a done directory so a restarted watcher never resubmits
// them.
package watch
