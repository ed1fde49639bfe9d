//go:build windows && 386

//go:generate goversioninfo -o=./winresources/resource.syso -manifest=internal/assets/framesplit.exe.manifest ./winresources/versioninfo.json

package main

import _ "framesplit/cmd/framesplit/winresources"
