// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package seed bootstraps an empty store from a YAML file.

	categories: [Elegance, Talent, Folklore]
	candidates:
	  - name: Isabella
	    surname: Montoya
	    age: 22
	    categories: [Elegance, Talent]
	jurors:
	  - name: Ana
	    surname: Ramos
	    email: ana@example.com

Category references are matched by name, ignoring case. The whole file is
written in one batch, so a rejected seed leaves the store empty.
*/
package seed
