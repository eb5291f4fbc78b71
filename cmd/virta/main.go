// Virta - Log Subscription Wiring
// Plan. Merge. Deploy elsewhere.
package main

func main() {
	Execute()
}
