// Package cli implements the command layer of the mediarelay CLI.
//
// Commands are given as name=arg1,arg2 (see ParseCommand) and run against a
// relay.Facade by a Dispatcher. Arguments are converted per command, so
// "up=double_tap", "set_repeat=all" and "play_url='http://host/a,b.mp4',30"
// are all valid. Listings of features and commands are rendered with
// go-pretty tables or as json/yaml.
package cli
