// Package survival measures how long uploaders keep posting.
//
// The reference instant is the latest post in the data, not the wall clock,
// so results are reproducible from a snapshot. An uploader is active when
// they posted strictly after the reference minus the active window, and
// retired when their last post falls strictly before it. Records without an
// uploader ID are ignored throughout.
package survival
