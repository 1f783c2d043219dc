// Command uvctl is the operator CLI for the UV index pipeline: one-off feed
// runs, validation of local feed files and plain-text feed maintenance.
package main

func main() {
	Execute()
}
