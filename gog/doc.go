// Package gog discovers GOG Galaxy installations recorded in the Windows
// registry.
//
// A Scanner walks the Games key (by default
// SOFTWARE\WOW6432Node\GOG.com\Games), parses every subkey into a Record or
// a Diagnostic, and folds DLC records into the game they depend on:
//
//	store, err := registry.OpenHive(`D:\backup\SOFTWARE`, registry.HiveOptions{Mount: registry.DefaultMount})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	out := gog.NewScanner(store, gog.Options{}).Scan(ctx)
//	for _, r := range out.Results {
//	    switch r := r.(type) {
//	    case gog.Diagnostic:
//	        fmt.Println("skipped:", r)
//	    case gog.Record:
//	        fmt.Println(r.ID, r.Name, len(r.Children))
//	    }
//	}
//
// Scan never panics and never returns an error: every failure, including a
// missing root key, is reported as a Diagnostic inside the Outcome.
package gog
