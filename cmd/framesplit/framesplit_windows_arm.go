//go:build windows && arm

//go:generate goversioninfo -arm=true -o=./winresources/resource.syso -manifest=internal/assets/framesplit.exe.manifest ./winresources/versioninfo.json

package main

import _ "framesplit/cmd/framesplit/winresources"
