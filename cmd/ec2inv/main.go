// ec2inv - EC2 instance inventory across AWS regions.
package main

func main() {
	Execute()
}
