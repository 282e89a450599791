// Command gogscan lists GOG Galaxy installations recorded in a Windows
// registry: the live one, an offline SOFTWARE hive, or a .reg export.
package main

func main() {
	execute()
}
